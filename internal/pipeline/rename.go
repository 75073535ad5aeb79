// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/paperfeed/pkg/types"
)

// scanDateLayout renders dates as dd-mm-yy, the convention the office
// scanner stamps on its own output.
const scanDateLayout = "02-01-06"

// ScanName returns the sequential scan filename for position seq,
// e.g. "03_Xerox_Scan_17-04-26.pdf".
func ScanName(seq int, t time.Time) string {
	return fmt.Sprintf("%02d_Xerox_Scan_%s.pdf", seq, t.Format(scanDateLayout))
}

// renameArtifacts renames a document's page files to the scan naming
// convention in page order, advancing seq across the whole run so
// filenames stay unique when multiple documents are processed. A failed
// rename leaves the original name in place, warns, and continues.
func renameArtifacts(artifacts []types.PageArtifact, seq *int, now time.Time, w io.Writer) {
	for i := range artifacts {
		newName := ScanName(*seq, now)
		newPath := filepath.Join(filepath.Dir(artifacts[i].Path), newName)

		if err := os.Rename(artifacts[i].Path, newPath); err != nil {
			fmt.Fprintf(w, "warning: could not rename %s: %v\n", artifacts[i].Filename, err)
			*seq++
			continue
		}

		fmt.Fprintf(w, "renamed %s -> %s\n", artifacts[i].Filename, newName)
		artifacts[i].Filename = newName
		artifacts[i].Path = newPath
		*seq++
	}
}
