package domain

import "time"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeRosterReplaced = "roster_replaced"

type RosterReplacedMailData struct {
	FullName    string       `json:"fullName"`
	Count       int          `json:"count"`
	Departments []ChartEntry `json:"departments"`
	ReplacedAt  time.Time    `json:"replacedAt"`
}
