// Package buildid derives a stable content key (the "build-ID") from the
// subset of a target's settings that affects the bytes the compiler emits.
// Source and import files deliberately don't feed this hash: they're mtime
// inputs to the up-to-date check (package uptodate), not key material, since
// the key only needs to distinguish (config × platform × compiler ×
// ABI-relevant-flags) tuples, not individual edits.
package buildid

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/zeebo/blake3"

	"github.com/forgebuild/forge/internal/core"
)

// digestLength is the number of hex characters kept from the blake3 digest
// in the final build-ID; short enough to keep directory names manageable,
// long enough that collisions across a project's targets are not a practical concern.
const digestLength = 16

// Compute derives the build-ID for one target under the given generator
// settings. The directory-name format is
// "<config>-<buildType>-<platform>-<arch>-<compiler>_<frontend>-<hexdigest>".
func Compute(settings core.GeneratorSettings, s *core.BuildSettings) string {
	h := blake3.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0}) // separator so "ab","c" can't collide with "a","bc"
	}
	write(settings.Config)
	write(settings.Platform.String())
	write(settings.Platform.CompilerID)
	write(settings.Platform.FrontendVersion)

	writeSorted := func(vs []string) {
		sorted := append([]string(nil), vs...)
		sort.Strings(sorted)
		for _, v := range sorted {
			write(v)
		}
	}
	writeSorted(s.Versions)
	writeSorted(s.DebugVersions)
	for _, f := range s.Dflags {
		write(f)
	}
	for _, f := range s.Lflags {
		write(f)
	}
	write(fmt.Sprintf("%d", s.Options))
	writeSorted(s.StringImportPaths)

	digest := h.Sum(nil)
	hexDigest := hex.EncodeToString(digest)[:digestLength]
	return fmt.Sprintf("%s-%s-%s-%s-%s_%s-%s",
		settings.Config,
		settings.BuildType,
		settings.Platform.OS,
		settings.Platform.Arch,
		settings.Platform.CompilerID,
		settings.Platform.FrontendVersion,
		hexDigest,
	)
}
