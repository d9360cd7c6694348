// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package personname

import (
	"strings"

	"ownerparse/internal/owners"
)

// ResolveSharedSurname builds a person from a lone first-name token and the
// last name of an already parsed sibling in the same joint group, as in
// "SMITH JOHN & MARY". It reports false when sibling is not a person or the
// token does not make a valid first name.
func ResolveSharedSurname(token string, sibling owners.Owner) (owners.Owner, bool) {
	if !sibling.IsPerson() || sibling.LastName == "" {
		return owners.Owner{}, false
	}
	if len(strings.Fields(token)) != 1 {
		return owners.Owner{}, false
	}

	first := Recase(cleanToken(token))
	if !ValidName(first) {
		return owners.Owner{}, false
	}
	return owners.NewPerson(first, "", sibling.LastName), true
}
