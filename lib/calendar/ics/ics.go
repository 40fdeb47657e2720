package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	calendarapimodels "hr-scheduler-backend/models/api/calendar"
)

const dateTimeLayout = "20060102T150405Z"

// Generate формирует ics приглашение (RFC 5545) для офлайн доставки,
// когда календарный провайдер недоступен или не подключен.
func Generate(req calendarapimodels.EventRequest) (body []byte, uid string) {
	uid = uuid.NewString()
	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//hr-scheduler//scheduler//RU")
	writeLine(&b, "METHOD:REQUEST")
	writeLine(&b, "BEGIN:VEVENT")
	writeLine(&b, "UID:"+uid)
	writeLine(&b, "DTSTAMP:"+time.Now().UTC().Format(dateTimeLayout))
	writeLine(&b, "DTSTART:"+req.Start.UTC().Format(dateTimeLayout))
	writeLine(&b, "DTEND:"+req.End.UTC().Format(dateTimeLayout))
	writeLine(&b, "SUMMARY:"+escapeText(req.Summary))
	if req.Description != "" {
		writeLine(&b, "DESCRIPTION:"+escapeText(req.Description))
	}
	for _, a := range req.Attendees {
		writeLine(&b, fmt.Sprintf("ATTENDEE;CN=%v:mailto:%v", escapeText(a.Name), a.Email))
	}
	writeLine(&b, "STATUS:CONFIRMED")
	writeLine(&b, "END:VEVENT")
	writeLine(&b, "END:VCALENDAR")
	return []byte(b.String()), uid
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}

var textEscaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\n", "\\n",
)

func escapeText(v string) string {
	return textEscaper.Replace(v)
}
