package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// maxTestNameLength is the longest test name that fits into a MongoDB
// database name (63 chars) together with the "secretnick_test_" prefix.
const maxTestNameLength = 40

// SetupTestMongoDB creates an isolated test database in the shared MongoDB
// container. Each test gets its own database; it is dropped on cleanup.
func SetupTestMongoDB(t *testing.T) *mongo.Database {
	t.Helper()
	return SetupSharedTestMongoDB(t)
}

// generateTestDBName creates a unique database name from the test name.
func generateTestDBName(testName string) string {
	testName = strings.ReplaceAll(testName, "/", "_")
	if len(testName) > maxTestNameLength {
		hash := sha256.Sum256([]byte(testName))
		testName = testName[:20] + "_" + hex.EncodeToString(hash[:])[:12]
	}
	return "secretnick_test_" + testName
}
