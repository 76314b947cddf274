// Package view renders the HTML fragments served by the home page and the
// admin message stream. Components live in view.templ; run templ generate
// after editing it.
package view

import (
	"strings"
	"time"
)

// MessagesContainerID is the element new broadcasts are appended to.
const MessagesContainerID = "admin-messages"

func greeting(userName string) string {
	if strings.TrimSpace(userName) == "" {
		return "Welcome to SkillSwap"
	}
	return "Welcome back, " + userName
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func displayDate(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006")
}
