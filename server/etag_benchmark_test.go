package server

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/meysamhadeli/dirsnap/snapshot/models"
)

// BenchmarkETag compares xxh3 against md5 over a realistic snapshot body
func BenchmarkETag(b *testing.B) {
	snapshot := models.NewSnapshot()
	for i := 0; i < 200; i++ {
		snapshot.Files = append(snapshot.Files, models.FileRecord{
			Path:      fmt.Sprintf("src/components/component%d.tsx", i),
			Content:   strings.Repeat("export const x = 1;\n", 100),
			Timestamp: 1700000000000 + int64(i),
		})
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		b.Fatal(err)
	}

	b.Run("XXH3", func(b *testing.B) {
		b.SetBytes(int64(len(body)))
		for i := 0; i < b.N; i++ {
			_ = ETag(body)
		}
	})

	b.Run("MD5", func(b *testing.B) {
		b.SetBytes(int64(len(body)))
		for i := 0; i < b.N; i++ {
			_ = fmt.Sprintf(`"%x"`, md5.Sum(body))
		}
	})
}
