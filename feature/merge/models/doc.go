// Package models defines the database models of the merge feature.
package models
