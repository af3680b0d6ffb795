package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidationError is returned before any remote call when an entity or patch
// is missing required data.
type ValidationError struct {
	Entity  EntityType
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Entity, e.Message)
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.Field, e.Message)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrNotFound is returned when a lookup by id or natural key has no match.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// IsNotFound reports whether err wraps an ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}

func required(entity EntityType, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Entity: entity, Field: field, Message: "is required"}
	}
	return nil
}

func validSlug(entity EntityType, slug string) error {
	if err := required(entity, "slug", slug); err != nil {
		return err
	}
	if !slugPattern.MatchString(slug) {
		return &ValidationError{Entity: entity, Field: "slug", Message: fmt.Sprintf("%q must be lowercase letters, digits and dashes", slug)}
	}
	return nil
}

// Validate checks the fields required to create a tool.
func (t Tool) Validate() error {
	if err := required(EntityTool, "name", t.Name); err != nil {
		return err
	}
	return validSlug(EntityTool, t.Slug)
}

// Validate checks the fields required to create a category.
func (c Category) Validate() error {
	if err := required(EntityCategory, "label", c.Label); err != nil {
		return err
	}
	return validSlug(EntityCategory, c.Slug)
}

// Validate checks the fields required to create a content item.
func (c ContentItem) Validate() error {
	return required(EntityContentItem, "title", c.Title)
}

// Validate rejects patches that would blank a required field.
func (p ToolPatch) Validate() error {
	if p.Name != nil {
		if err := required(EntityTool, "name", *p.Name); err != nil {
			return err
		}
	}
	if p.Slug != nil {
		return validSlug(EntityTool, *p.Slug)
	}
	return nil
}

// Validate rejects patches that would blank a required field.
func (p CategoryPatch) Validate() error {
	if p.Label != nil {
		if err := required(EntityCategory, "label", *p.Label); err != nil {
			return err
		}
	}
	if p.Slug != nil {
		return validSlug(EntityCategory, *p.Slug)
	}
	return nil
}

// Validate rejects patches that would blank a required field.
func (p ContentItemPatch) Validate() error {
	if p.Title != nil {
		return required(EntityContentItem, "title", *p.Title)
	}
	return nil
}

// Validate rejects patches that would blank the ranking title.
func (p RankingPatch) Validate() error {
	if p.Title != nil {
		return required(EntityRanking, "title", *p.Title)
	}
	return nil
}
