// Package models defines the persisted entities of the practice backend.
//
// The schema follows the clinical domain: Psychologist accounts (including
// admin and superadmin roles), Patients with code-based credentials,
// Questionnaires and their scheduled Assignments, delivery cycles recorded as
// QuestionnaireCompletions, plus TherapySessions, Notes, Messages,
// AssessmentStats, AuditLogs and DeviceTokens.
//
// All entities are GORM models and are created via AutoMigrate at startup.
// Loosely structured payloads (questions, answers, chat snapshots) are stored
// as JSON columns through the JSONList type.
package models
