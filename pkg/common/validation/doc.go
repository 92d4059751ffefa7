// Package validation provides shared argument checks for taskring
// constructors and submission paths. All helpers return a
// *errors.ValidationError describing the module, field, and rejected value.
package validation
