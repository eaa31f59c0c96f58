package parser

import "regress/internal/domain"

// Parser reads a declarative test module
type Parser interface {
	Parse(path string) (*domain.CaseFile, error)
}
