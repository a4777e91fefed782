package pvdata

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// CodecConfig is the YAML-loadable configuration shared by cmd/pvdump
// and anything embedding the wire codec: how large an array may grow
// before CopyIn/Resize refuse it, and whether the wire value codec
// s2-compresses large UInt8A array payloads.
type CodecConfig struct {
	MaxArrayLen    int  `yaml:"maxArrayLen"`
	CompressArrays bool `yaml:"compressArrays"`
	CompressMinLen int  `yaml:"compressMinLen"`
}

// DefaultCodecConfig matches pvxs's own defaults: effectively
// unbounded arrays, compression off.
func DefaultCodecConfig() CodecConfig {
	return CodecConfig{MaxArrayLen: 0, CompressArrays: false, CompressMinLen: 4096}
}

// LoadCodecConfig reads a CodecConfig from a YAML file, starting from
// DefaultCodecConfig so a partial file only overrides what it sets.
func LoadCodecConfig(path string) (CodecConfig, error) {
	cfg := DefaultCodecConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// activeConfig is package-wide, mirroring wire's own config var: both
// default to DefaultCodecConfig() so a caller that never touches
// either still gets unbounded arrays and no compression.
var activeConfig = DefaultCodecConfig()

// SetCodecConfig replaces the package-wide config CopyIn/Resize
// consult for MaxArrayLen.
func SetCodecConfig(cfg CodecConfig) { activeConfig = cfg }

func checkArrayLen(n int) error {
	if activeConfig.MaxArrayLen > 0 && n > activeConfig.MaxArrayLen {
		return fmt.Errorf("pvdata: array length %d exceeds configured max %d", n, activeConfig.MaxArrayLen)
	}
	return nil
}
