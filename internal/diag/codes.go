package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectType        Code = 2003
	SynExpectDecl        Code = 2004
	SynPackageFirst      Code = 2005
	SynDuplicatePackage  Code = 2006
	SynExpectRBracket    Code = 2007
	SynBadArrayLen       Code = 2008
	SynExpectViewEntry   Code = 2009
	SynExpectBindingName Code = 2010

	// Семантические
	SemaInfo               Code = 3000
	SemaDuplicatePart      Code = 3001
	SemaDuplicateRecord    Code = 3002
	SemaDuplicateView      Code = 3003
	SemaUnknownPart        Code = 3004
	SemaUnknownRecord      Code = 3005
	SemaUnknownView        Code = 3006
	SemaDuplicateBinding   Code = 3007
	SemaFieldRebound       Code = 3008
	SemaOpaqueBoundToField Code = 3009
	SemaFieldNeedsBinding  Code = 3010
	SemaPartNotInRecord    Code = 3011
	SemaNotNestable        Code = 3012
	SemaDuplicateEntry     Code = 3013
	SemaExclusiveOverlap   Code = 3014
	SemaCapabilityMismatch Code = 3015
	SemaViewRecordMismatch Code = 3016
	SemaRecordCycle        Code = 3017
	SemaNameCollision      Code = 3018
	SemaPartUnused         Code = 3019

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Генерация
	GenInfo        Code = 5000
	GenStaleOutput Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",

	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynExpectIdentifier:  "Expect identifier",
	SynExpectType:        "Expect type",
	SynExpectDecl:        "Expect declaration",
	SynPackageFirst:      "Package declaration must come first",
	SynDuplicatePackage:  "Duplicate package declaration",
	SynExpectRBracket:    "Expect closing bracket",
	SynBadArrayLen:       "Bad array length",
	SynExpectViewEntry:   "Expect view entry",
	SynExpectBindingName: "Expect binding name",

	SemaInfo:               "Semantic information",
	SemaDuplicatePart:      "Duplicate part declaration",
	SemaDuplicateRecord:    "Duplicate record declaration",
	SemaDuplicateView:      "Duplicate view declaration",
	SemaUnknownPart:        "Unknown part",
	SemaUnknownRecord:      "Unknown record",
	SemaUnknownView:        "Unknown view",
	SemaDuplicateBinding:   "Part bound twice in record",
	SemaFieldRebound:       "Struct field bound twice",
	SemaOpaqueBoundToField: "Opaque part bound to a field",
	SemaFieldNeedsBinding:  "Field part bound without a field",
	SemaPartNotInRecord:    "Part not bound by record",
	SemaNotNestable:        "Part admits no nested parts",
	SemaDuplicateEntry:     "Duplicate view entry",
	SemaExclusiveOverlap:   "Overlapping exclusive entries",
	SemaCapabilityMismatch: "Capability mismatch",
	SemaViewRecordMismatch: "Views target different records",
	SemaRecordCycle:        "Record containment cycle",
	SemaNameCollision:      "Generated name collision",
	SemaPartUnused:         "Part never bound by any record",

	IOLoadFileError: "Failed to load file",

	GenInfo:        "Generation information",
	GenStaleOutput: "Generated file is out of date",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
