// Package app is the application layer, the only component that references
// multiple domain components. It orchestrates all use cases: ownership
// authorization, the application status lifecycle, saved-job toggles, and
// the apply flow's resume resolution.
package app
