package mat73

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, DefaultStrideThreshold, cfg.strideThreshold)
	assert.Equal(t, DefaultPairingWindow, cfg.pairingWindow)
	assert.NotNil(t, cfg.logger)
}

func TestWithStrideThresholdIgnoresNonPositive(t *testing.T) {
	cfg := defaultConfig()
	applyOptions(cfg, []Option{WithStrideThreshold(0), WithStrideThreshold(-1)})
	assert.Equal(t, DefaultStrideThreshold, cfg.strideThreshold)

	applyOptions(cfg, []Option{WithStrideThreshold(2.5)})
	assert.Equal(t, 2.5, cfg.strideThreshold)
}

func TestWithPairingWindowIgnoresNonPositive(t *testing.T) {
	cfg := defaultConfig()
	applyOptions(cfg, []Option{WithPairingWindow(0)})
	assert.Equal(t, DefaultPairingWindow, cfg.pairingWindow)

	applyOptions(cfg, []Option{WithPairingWindow(7)})
	assert.Equal(t, 7, cfg.pairingWindow)
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	cfg := defaultConfig()
	original := cfg.logger
	applyOptions(cfg, []Option{WithLogger(nil)})
	assert.Equal(t, original, cfg.logger)
}

func TestApplyOptionsEmpty(t *testing.T) {
	cfg := defaultConfig()
	applyOptions(cfg, nil)
	assert.Equal(t, DefaultStrideThreshold, cfg.strideThreshold)
	assert.Equal(t, DefaultPairingWindow, cfg.pairingWindow)
}
