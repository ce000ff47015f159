package image

import (
	"sort"
	"strings"

	masterminds "github.com/Masterminds/semver/v3"
)

// Family is the variant family of an image set, as far as test
// eligibility is concerned.
type Family int

const (
	General Family = iota
	HuggingFaceFamily
	HuggingFaceTrcompFamily
	TrcompFamily
	AutoGluonFamily
)

func (f Family) String() string {
	switch f {
	case HuggingFaceFamily:
		return "huggingface"
	case HuggingFaceTrcompFamily:
		return "huggingface-trcomp"
	case TrcompFamily:
		return "trcomp"
	case AutoGluonFamily:
		return "autogluon"
	default:
		return "general"
	}
}

// Arch is the CPU architecture of an image set.
type Arch int

const (
	X86 Arch = iota
	GravitonArch
	ARM64Arch
)

func (a Arch) String() string {
	switch a {
	case GravitonArch:
		return "graviton"
	case ARM64Arch:
		return "arm64"
	default:
		return "x86"
	}
}

// Set is the group of images handed to one test job.
type Set struct {
	Refs []Ref
	Tags Tags // union of every member's tags
}

// NewSet parses and classifies every identifier in images.
func NewSet(images []string) Set {
	s := Set{Refs: make([]Ref, 0, len(images))}
	for _, id := range images {
		ref := Parse(id)
		s.Refs = append(s.Refs, ref)
		s.Tags |= ref.Tags
	}
	return s
}

// Len returns the number of images in the set.
func (s Set) Len() int {
	return len(s.Refs)
}

// String joins the identifiers with single spaces, the DLC_IMAGES format.
func (s Set) String() string {
	ids := make([]string, len(s.Refs))
	for i, r := range s.Refs {
		ids[i] = r.Raw
	}
	return strings.Join(ids, " ")
}

// Versions returns the distinct framework versions in the set, lowest
// first. Images whose tag carries no version are left out.
func (s Set) Versions() []string {
	seen := make(map[string]bool)
	var vs masterminds.Collection
	for _, r := range s.Refs {
		if r.Version == nil || seen[r.Version.String()] {
			continue
		}
		seen[r.Version.String()] = true
		vs = append(vs, r.Version)
	}
	sort.Sort(vs)

	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// Family resolves the set's variant family. AutoGluon wins over everything
// else because its exclusions cover every other family's.
func (s Set) Family() Family {
	hf := s.Tags.Has(HuggingFace)
	trcomp := s.Tags.Has(TrainingCompiler)
	switch {
	case s.Tags.Has(AutoGluon):
		return AutoGluonFamily
	case hf && trcomp:
		return HuggingFaceTrcompFamily
	case hf:
		return HuggingFaceFamily
	case trcomp:
		return TrcompFamily
	default:
		return General
	}
}

// Arch resolves the set's architecture; graviton takes precedence over arm64.
func (s Set) Arch() Arch {
	switch {
	case s.Tags.Has(Graviton):
		return GravitonArch
	case s.Tags.Has(ARM64):
		return ARM64Arch
	default:
		return X86
	}
}
