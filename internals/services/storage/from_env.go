// file: internals/services/storage/from_env.go
package storage

import (
	"log"

	"studypulse_backend/internals/configs"
)

// FromEnv picks the blob driver. Local disk is the default; OSS needs the
// full credential set or we fall back to local with a warning.
func FromEnv() BlobStore {
	if configs.GetEnv("BLOB_DRIVER") == "oss" {
		endpoint := configs.GetEnv("OSS_ENDPOINT")
		keyID := configs.GetEnv("OSS_ACCESS_KEY_ID")
		secret := configs.GetEnv("OSS_ACCESS_KEY_SECRET")
		bucket := configs.GetEnv("OSS_BUCKET")
		if endpoint != "" && keyID != "" && secret != "" && bucket != "" {
			store, err := NewOSSStore(endpoint, keyID, secret, bucket)
			if err == nil {
				return store
			}
			log.Printf("OSS store init failed, falling back to local disk: %v", err)
		} else {
			log.Println("[WARNING] BLOB_DRIVER=oss but OSS_* env incomplete, using local disk")
		}
	}
	return NewLocalStore(configs.GetEnv("UPLOAD_DIR", "./uploads"), "/uploads")
}
