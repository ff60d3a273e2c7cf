// Package flash stores one-shot status messages in the session. A message is
// shown on the next rendered page and then discarded.
package flash

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Message categories, matched by the templates for styling.
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
	CategoryInfo    = "info"
)

// Message is a single flash entry.
type Message struct {
	Category string
	Text     string
}

func init() {
	gob.Register(Message{})
}

// Add queues a message for the next rendered page.
func Add(c *gin.Context, category, text string) {
	session := sessions.Default(c)
	session.AddFlash(Message{Category: category, Text: text})
	// A lost flash is cosmetic; the redirect still happens.
	_ = session.Save()
}

// Pop returns all queued messages and clears them from the session.
func Pop(c *gin.Context) []Message {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	// Flashes() removes the entries; persist the removal.
	_ = session.Save()

	messages := make([]Message, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(Message); ok {
			messages = append(messages, m)
		}
	}
	return messages
}
