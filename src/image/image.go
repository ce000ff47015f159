// Package image parses DLC image identifiers and classifies image sets into
// the variant families and architectures that test eligibility depends on.
//
// An identifier looks like
//
//	669063966089.dkr.ecr.us-west-2.amazonaws.com/pr-huggingface-pytorch-trcomp-training:2.0.0-gpu-py310-cu118-ubuntu20.04-pr-3311
//
// Classification is done once per identifier by Parse; eligibility rules only
// ever look at the resulting Tags, Family and Arch values.
package image

import (
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
)

// Tags is a bitset of variant markers found in an image identifier.
type Tags uint8

const (
	HuggingFace Tags = 1 << iota
	TrainingCompiler
	AutoGluon
	Graviton
	ARM64
)

// markers maps identifier substrings to the tag they set.
var markers = []struct {
	text string
	tag  Tags
}{
	{"huggingface", HuggingFace},
	{"trcomp", TrainingCompiler},
	{"autogluon", AutoGluon},
	{"graviton", Graviton},
	{"arm64", ARM64},
}

// Has reports whether every tag in t is set.
func (tags Tags) Has(t Tags) bool {
	return tags&t == t
}

func (tags Tags) String() string {
	var names []string
	for _, m := range markers {
		if tags.Has(m.tag) {
			names = append(names, m.text)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// Ref is a parsed image identifier.
type Ref struct {
	Raw        string
	Repository string               // "pr-pytorch-training", registry host stripped
	Tag        string               // "2.1.0-gpu-py310-cu121-ubuntu20.04-ec2"
	Version    *masterminds.Version // leading framework version of Tag, nil if absent
	Tags       Tags
}

// Parse classifies a single image identifier. It never fails: identifiers
// that do not follow the registry/repo:tag layout still get their Tags.
func Parse(identifier string) Ref {
	ref := Ref{Raw: identifier, Tags: scan(identifier)}

	name := identifier
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndexByte(name, ':'); idx >= 0 {
		ref.Repository = name[:idx]
		ref.Tag = name[idx+1:]
	} else {
		ref.Repository = name
	}

	ref.Version = tagVersion(ref.Tag)
	return ref
}

// scan is case-sensitive: registries only accept lowercase repositories.
func scan(s string) Tags {
	var tags Tags
	for _, m := range markers {
		if strings.Contains(s, m.text) {
			tags |= m.tag
		}
	}
	return tags
}

// tagVersion returns the framework version a tag leads with, 2.1.0 for
// "2.1.0-gpu-py310". Tags like "latest" have none.
func tagVersion(tag string) *masterminds.Version {
	versionPart, _, _ := strings.Cut(tag, "-")
	if versionPart == "" {
		return nil
	}
	v, err := masterminds.NewVersion(versionPart)
	if err != nil {
		return nil
	}
	return v
}
