// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package owners

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// DatedOwners is one historical bucket of the timeline.
type DatedOwners struct {
	Date   string
	Owners []Owner
}

// Timeline maps ISO dates (ascending) to owner lists, plus the current snapshot.
// It marshals as one ordered object whose last key is CurrentKey.
type Timeline struct {
	Dates   []DatedOwners
	Current []Owner
}

// Keys returns the bucket keys in output order.
func (t Timeline) Keys() []string {
	keys := make([]string, 0, len(t.Dates)+1)
	for _, d := range t.Dates {
		keys = append(keys, d.Date)
	}
	return append(keys, CurrentKey)
}

// Get returns the owners stored under key.
func (t Timeline) Get(key string) ([]Owner, bool) {
	if key == CurrentKey {
		return t.Current, true
	}
	for _, d := range t.Dates {
		if d.Date == key {
			return d.Owners, true
		}
	}
	return nil, false
}

// MarshalJSON writes the buckets in key order; encoding/json would sort a map.
func (t Timeline) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range t.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		owners, _ := t.Get(key)
		v, err := json.Marshal(nonNil(owners))
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML builds an ordered mapping node.
func (t Timeline) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range t.Keys() {
		owners, _ := t.Get(key)
		value := &yaml.Node{}
		if err := value.Encode(nonNil(owners)); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		)
	}
	return node, nil
}

func nonNil(in []Owner) []Owner {
	if in == nil {
		return []Owner{}
	}
	return in
}
