package testutil

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// CleanerSuite is a base suite for tests that drive the whole pipeline or
// need config files on disk.
type CleanerSuite struct {
	suite.Suite
	ctx       context.Context
	cancel    context.CancelFunc
	tempDir   string
	startTime time.Time
}

// SetupSuite runs before all tests in the suite
func (s *CleanerSuite) SetupSuite() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), time.Minute)
	s.startTime = time.Now()
	s.tempDir = s.T().TempDir()
}

// TearDownSuite runs after all tests in the suite
func (s *CleanerSuite) TearDownSuite() {
	s.cancel()
	s.T().Logf("suite completed in %v", time.Since(s.startTime))
}

// Context returns the suite context
func (s *CleanerSuite) Context() context.Context {
	return s.ctx
}

// Logger returns a logger bound to the running test
func (s *CleanerSuite) Logger() *zap.Logger {
	return zaptest.NewLogger(s.T())
}

// TempDir returns the temporary directory path
func (s *CleanerSuite) TempDir() string {
	return s.tempDir
}

// CreateTempFile creates a file with content in the suite directory
func (s *CleanerSuite) CreateTempFile(name string, content []byte) string {
	path := filepath.Join(s.tempDir, name)
	require.NoError(s.T(), os.WriteFile(path, content, 0o644))
	return path
}
