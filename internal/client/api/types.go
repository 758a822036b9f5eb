package api

import "time"

// Entry is a diary record as returned by the server.
type Entry struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by"`
	WorstCase         string    `json:"worst_case"`
	WorstConsequences string    `json:"worst_consequences"`
	WhatCanIDo        string    `json:"what_can_i_do"`
	HowWillICope      string    `json:"how_will_i_cope"`
}

// EntryFields carries the user-editable part of an entry.
type EntryFields struct {
	WorstCase         string `json:"worst_case"`
	WorstConsequences string `json:"worst_consequences"`
	WhatCanIDo        string `json:"what_can_i_do"`
	HowWillICope      string `json:"how_will_i_cope"`
}

// EntriesPage is one page of a listing plus the total matching count.
type EntriesPage struct {
	Entries []Entry `json:"entries"`
	Count   int64   `json:"count"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is returned by verify and refresh.
type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// ExportResult is the storage key and presigned download link of an export.
type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
