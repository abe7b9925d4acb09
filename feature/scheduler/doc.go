// Package scheduler runs the questionnaire delivery loop. Every minute it
// promotes due pending completions to sent (or paused when the assignment is
// paused) and expires sent completions that went unanswered for a day.
package scheduler
