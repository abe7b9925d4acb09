// Package superadmin exposes platform-wide statistics and account
// provisioning, restricted to the superadmin role.
package superadmin
