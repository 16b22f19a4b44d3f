package folder

import (
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

// UploadAll uploads every payload independently. A failing payload never
// stops the others; results are in the same order as payloads.
func (s *Store) UploadAll(payloads []Payload) []UploadResult {
	results := make([]UploadResult, len(payloads))

	p := pool.New().WithMaxGoroutines(s.workers)
	for i, payload := range payloads {
		p.Go(func() {
			results[i] = s.uploadPayload(payload)
		})
	}
	p.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Warn().Err(res.Err).Str("name", res.Name).Msg("Batch upload item failed")
		}
	}
	log.Debug().Int("files", len(results)).Int("failed", failed).Msg("Batch upload completed")
	return results
}

func (s *Store) uploadPayload(payload Payload) UploadResult {
	res := UploadResult{Name: payload.Name}
	// Reject bad names before touching the payload.
	if err := checkName("upload", payload.Name); err != nil {
		res.Err = err
		return res
	}
	rc, err := payload.Open()
	if err != nil {
		res.Err = newError("upload", payload.Name, ErrStorageUnavailable, err)
		return res
	}
	defer rc.Close()

	res.Entry, res.Err = s.Upload(payload.Name, rc)
	return res
}
