// Package models defines the server-side persistence types.
package models

import "time"

// Entry is a single diary record. ID and CreatedAt are assigned by the
// database; CreatedBy is fixed at creation time and never changes.
type Entry struct {
	ID                int64     `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedBy         string    `json:"created_by"`
	WorstCase         string    `json:"worst_case"`
	WorstConsequences string    `json:"worst_consequences"`
	WhatCanIDo        string    `json:"what_can_i_do"`
	HowWillICope      string    `json:"how_will_i_cope"`
}
