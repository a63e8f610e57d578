package artifacts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/provideplatform/agekey/zkp/lib/circuits/gnark"
	"github.com/provideplatform/agekey/zkp/providers"
)

const defaultArtifactsPath = "./artifacts"

const binaryFilename = "age.r1cs"
const provingKeyFilename = "age.pk"
const verifyingKeyFilename = "age.vk"

// Artifacts is the immutable proving context shared by the certifier, prover
// and verifier roles: the compiled constraint system and the Groth16 key
// material produced for it by a single setup. Proofs only verify against the
// artifacts they were generated with.
type Artifacts struct {
	Binary       []byte
	ProvingKey   []byte
	VerifyingKey []byte
}

// Generate compiles the age circuit and runs the Groth16 setup, returning a
// fresh artifact set. Intended for the setup command and tests; deployed
// processes load previously generated artifacts instead.
func Generate() (*Artifacts, error) {
	provider := providers.InitGnarkProverProvider()

	binary, err := provider.Compile(&gnark.AgeCircuit{})
	if err != nil {
		return nil, fmt.Errorf("failed to compile age circuit; %s", err.Error())
	}

	pk, vk, err := provider.Setup(binary)
	if err != nil {
		return nil, fmt.Errorf("failed to setup age circuit; %s", err.Error())
	}

	return &Artifacts{
		Binary:       binary,
		ProvingKey:   pk,
		VerifyingKey: vk,
	}, nil
}

// Load reads a previously written artifact set from the given directory
func Load(dir string) (*Artifacts, error) {
	a := &Artifacts{}

	for _, item := range []struct {
		filename string
		buf      *[]byte
	}{
		{binaryFilename, &a.Binary},
		{provingKeyFilename, &a.ProvingKey},
		{verifyingKeyFilename, &a.VerifyingKey},
	} {
		raw, err := os.ReadFile(filepath.Join(dir, item.filename))
		if err != nil {
			return nil, fmt.Errorf("failed to load proving artifact %s; %s", item.filename, err.Error())
		}
		*item.buf = raw
	}

	return a, nil
}

// Write persists the artifact set to the given directory, creating it if
// needed
func (a *Artifacts) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifacts directory %s; %s", dir, err.Error())
	}

	for _, item := range []struct {
		filename string
		buf      []byte
	}{
		{binaryFilename, a.Binary},
		{provingKeyFilename, a.ProvingKey},
		{verifyingKeyFilename, a.VerifyingKey},
	} {
		path := filepath.Join(dir, item.filename)
		if err := os.WriteFile(path, item.buf, 0o644); err != nil {
			return fmt.Errorf("failed to write proving artifact %s; %s", path, err.Error())
		}
	}

	return nil
}

// FromEnv loads the artifact set from AGEKEY_ARTIFACTS_PATH, falling back to
// ./artifacts
func FromEnv() (*Artifacts, error) {
	dir := os.Getenv("AGEKEY_ARTIFACTS_PATH")
	if dir == "" {
		dir = defaultArtifactsPath
	}
	return Load(dir)
}
