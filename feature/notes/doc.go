// Package notes stores free-form clinical notes about patients.
package notes
