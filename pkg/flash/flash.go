// Package flash carries one-shot notices from a request to the next rendered page.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

const (
	CookieName = "qaforum_flash"
	pendingKey = "flash.pending"
	writtenKey = "flash.written"
	maxAge     = 300
)

var secureCookies bool

// SetSecure marks flash cookies Secure; call once at startup.
func SetSecure(secure bool) {
	secureCookies = secure
}

func Add(c *gin.Context, level Level, text string) {
	msgs := append(pending(c), Message{Level: level, Text: text})
	c.Set(pendingKey, msgs)
	c.Set(writtenKey, true)
	write(c, msgs)
}

// Pop returns the notices queued for this page and clears them, including
// any cookie written by Add earlier in the same request.
func Pop(c *gin.Context) []Message {
	msgs := pending(c)
	c.Set(pendingKey, []Message{})
	_, err := c.Cookie(CookieName)
	if err == nil || c.GetBool(writtenKey) {
		c.Set(writtenKey, false)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, "", -1, "/", "", secureCookies, true)
	}
	return msgs
}

func pending(c *gin.Context) []Message {
	if v, ok := c.Get(pendingKey); ok {
		if msgs, ok := v.([]Message); ok {
			return msgs
		}
	}
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil
	}
	return decode(raw)
}

func write(c *gin.Context, msgs []Message) {
	data, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, base64.RawURLEncoding.EncodeToString(data), maxAge, "/", "", secureCookies, true)
}

func decode(raw string) []Message {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}
