// Package stats tracks scored assessment results per patient, the colored
// badges shown on the patient card.
package stats
