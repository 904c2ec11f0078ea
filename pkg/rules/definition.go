// Reelparse
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Reelparse.
//
// Reelparse is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Reelparse is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Reelparse.  If not, see <http://www.gnu.org/licenses/>.

package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Definition is a user supplied rule, usually loaded from the config
// file. The match is written to Field: either the capture group Group or,
// when Value is set, that fixed value.
type Definition struct {
	ID          string   `toml:"id" json:"id" validate:"required,ruleid"`
	Name        string   `toml:"name,omitempty" json:"name,omitempty"`
	Description string   `toml:"description,omitempty" json:"description,omitempty"`
	Category    string   `toml:"category,omitempty" json:"category,omitempty" validate:"omitempty,category"`
	Pattern     string   `toml:"pattern" json:"pattern" validate:"required,pattern"`
	Field       string   `toml:"field" json:"field" validate:"required,field"`
	Value       string   `toml:"value,omitempty" json:"value,omitempty"`
	Examples    []string `toml:"examples,omitempty,multiline" json:"examples,omitempty"`
	Group       int      `toml:"group,omitempty" json:"group,omitempty" validate:"gte=0,lte=9"`
}

var ruleIDRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)

var definitionValidator = newDefinitionValidator()

func newDefinitionValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("ruleid", func(fl validator.FieldLevel) bool {
		return ruleIDRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := ParseCategory(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("pattern", func(fl validator.FieldLevel) bool {
		_, err := Compile(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("field", func(fl validator.FieldLevel) bool {
		return SettableField(fl.Field().String())
	})
	return v
}

// ErrInvalidDefinition wraps every validation failure of a Definition.
var ErrInvalidDefinition = errors.New("invalid rule definition")

// Validate checks the definition without compiling it into a rule.
func (d *Definition) Validate() error {
	if err := definitionValidator.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("%w %q: %s", ErrInvalidDefinition, d.ID, strings.Join(msgs, ", "))
		}
		return fmt.Errorf("%w %q: %w", ErrInvalidDefinition, d.ID, err)
	}
	return nil
}

// FromDefinition validates a definition and turns it into a rule. User
// patterns are given DefaultMatchTimeout.
func FromDefinition(d Definition) (Rule, error) {
	if err := d.Validate(); err != nil {
		return Rule{}, err
	}
	p, err := Compile(d.Pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("%w %q: %w", ErrInvalidDefinition, d.ID, err)
	}

	cat := FieldCategory(d.Field)
	if d.Category != "" {
		cat, _ = ParseCategory(d.Category)
	}
	name := d.Name
	if name == "" {
		name = d.ID
	}

	field, value, grp := d.Field, d.Value, d.Group
	if value == "" && grp == 0 {
		grp = 1
	}
	return Rule{
		ID:          d.ID,
		Name:        name,
		Description: d.Description,
		Category:    cat,
		Pattern:     p.WithTimeout(DefaultMatchTimeout),
		Examples:    d.Examples,
		Extract: func(m *Match) Fields {
			var f Fields
			v := value
			if v == "" {
				v = strings.TrimSpace(m.Group(grp))
				if v == "" {
					v = strings.TrimSpace(m.Text)
				}
			}
			f.Set(field, v)
			return f
		},
	}, nil
}

// FromDefinitions compiles every definition, stopping at the first
// invalid one.
func FromDefinitions(defs []Definition) ([]Rule, error) {
	out := make([]Rule, 0, len(defs))
	for _, d := range defs {
		r, err := FromDefinition(d)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
