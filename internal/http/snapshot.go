package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/moodsnapshot/internal/journal"
)

// DefaultMaxImportBytes caps the size of an uploaded snapshot.
const DefaultMaxImportBytes int64 = 32 << 20

type SnapshotController struct {
	store    SnapshotStore
	maxBytes int64
}

func NewSnapshotController(store SnapshotStore, maxBytes int64) *SnapshotController {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImportBytes
	}
	return &SnapshotController{store: store, maxBytes: maxBytes}
}

// Export handles GET /api/export
// The snapshot is served as a downloadable JSON document.
func (sc *SnapshotController) Export(c *gin.Context) {
	snap, err := sc.store.ExportSnapshot(c.Request.Context())
	if err != nil {
		respondJournalError(c, err, "export")
		return
	}
	data, err := journal.MarshalSnapshot(snap)
	if err != nil {
		respondInternalError(c, err, "marshal snapshot")
		return
	}

	filename := fmt.Sprintf("moodsnapshot-export-%s.json", sc.store.Today())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// Import handles POST /api/import
// The body is a snapshot as produced by Export. Nothing is written unless the
// whole payload validates.
func (sc *SnapshotController) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, sc.maxBytes)
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: fmt.Sprintf("import exceeds %d bytes", sc.maxBytes),
			})
			return
		}
		respondBadRequest(c, "failed to read request body")
		return
	}

	result, err := sc.store.ImportSnapshot(c.Request.Context(), data)
	if err != nil {
		respondJournalError(c, err, "import")
		return
	}
	c.JSON(http.StatusOK, result)
}
