package web

import (
	"net/url"

	"github.com/gin-gonic/gin"
)

const flashCookie = "assetboard_flash"

// setFlash queues a one-shot message shown on the next rendered page.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, url.QueryEscape(message), 60, "/", "", false, true)
}

// popFlash returns the pending flash message, if any, and clears it.
func popFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}
