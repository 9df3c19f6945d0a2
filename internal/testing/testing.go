// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// SampleDesign is a design document exercising every design_to_* branch.
const SampleDesign = `{
	"ui_components": [
		{"name": "LoginForm", "requirements": ["validation"], "dependencies": ["AuthService"]},
		{"name": "UserList"}
	],
	"api_endpoints": [
		{"path": "/api/users", "method": "GET", "data_model": "User", "response_model": "UserDto", "security": ["Admin"]},
		{"path": "/api/orders", "method": "POST", "data_model": "Order", "request_model": "OrderDto"}
	],
	"data_models": [
		{"name": "User", "properties": ["id:int", "email:string"]}
	],
	"services": [
		{"name": "UserService", "operations": ["list"], "data_access": {"repository": "UserRepository"}}
	],
	"frontend_dependencies": ["@angular/core"],
	"backend_dependencies": ["Microsoft.EntityFrameworkCore"]
}`

// SampleFrontend is a frontend implementation summary that partially matches [SampleBackend].
const SampleFrontend = `{
	"api_services": [
		{"name": "UserService", "methods": ["GET"]},
		{"name": "OrderService", "methods": ["POST"]}
	],
	"models": [
		{"name": "User", "properties": ["id:int", "email:string"]},
		{"name": "Order", "properties": ["id:int"]}
	],
	"auth_config": {"mechanism": "JWT", "roles": ["Admin", "User"]}
}`

// SampleBackend is the backend counterpart to [SampleFrontend].
const SampleBackend = `{
	"api_endpoints": [
		{"path": "/api/users", "methods": ["GET"]}
	],
	"data_models": [
		{"name": "UserDto", "properties": ["id:int", "email:string"]}
	],
	"security_config": {"mechanism": "OAuth2", "roles": ["Admin", "User"]}
}`

// SampleSync wraps [SampleFrontend] and [SampleBackend] as frontend_backend_sync inputs.
const SampleSync = `{"frontend_implementation": ` + SampleFrontend + `, "backend_implementation": ` + SampleBackend + `}`

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// FReader simulates a failure when reading a request or response body
type FReader struct{}

func (f *FReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FReader) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

// MustWriteFile writes content to name under dir and returns the full path.
func MustWriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
