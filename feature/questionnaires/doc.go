// Package questionnaires manages the catalog of reusable instruments that
// can be assigned to patients.
package questionnaires
