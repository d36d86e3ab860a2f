// Package validation checks and normalizes persisted organizer documents.
//
// Documents are validated against an embedded JSON Schema (draft 2020-12)
// before they are decoded. Decoded documents are then normalized: the
// default view and every view's root folder are created when missing, entry
// keys and ids are made to agree, and duplicate child ids are dropped. Each
// repair is reported as a warning.
//
// Structural problems such as cycles or children that point at unknown ids
// are reported as warnings but left in place. The tree resolver tolerates
// them and the mutators refuse to make them worse.
//
// # Basic Usage
//
//	o, result := validation.Validate(data)
//	if !result.Valid {
//	    return result.Err()
//	}
//	for _, w := range result.Warnings {
//	    logger.Warn("organizer repaired", "path", w.Path, "detail", w.Message)
//	}
package validation
