package validator

import (
	"os/exec"
	"testing"
)

// TestValidateAgainstSpirvVal exercises the bridge against a real spirv-val
// binary when one is installed, mirroring the teacher's skip-if-absent
// convention for external toolchain dependencies.
func TestValidateAgainstSpirvVal(t *testing.T) {
	if _, err := exec.LookPath("spirv-val"); err != nil {
		t.Skip("spirv-val not found on PATH")
	}

	b := New("spirv-val")
	if !b.Available() {
		t.Fatal("Available() should report true once LookPath has succeeded")
	}

	// An empty module is not valid SPIR-V; spirv-val should reject it with a
	// non-zero exit and some diagnostic on stderr.
	err := b.Validate(nil)
	if err == nil {
		t.Fatal("expected validation of an empty module to fail")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if verr.Message == "" {
		t.Error("expected a non-empty diagnostic message from spirv-val")
	}
}

func TestValidateMissingExecutable(t *testing.T) {
	b := New("spv-validator-tool-that-does-not-exist")
	if b.Available() {
		t.Fatal("did not expect a nonexistent tool to be reported as available")
	}
	err := b.Validate([]byte{0x03, 0x02, 0x23, 0x07})
	if err == nil {
		t.Fatal("expected an error when the validator executable cannot be found")
	}
	if _, ok := err.(*ValidationError); ok {
		t.Fatal("a missing executable should not produce a ValidationError (that's reserved for a ran-but-failed validator)")
	}
}
