package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromPath(t *testing.T) {
	assert.Equal(t, "nocturne", titleFromPath("scans/nocturne.png"))
	assert.Equal(t, "moonlight sonata", titleFromPath("moonlight_sonata.pdf"))
	assert.Equal(t, "prelude", titleFromPath(`C:\sheets\prelude.jpg`))
	assert.Equal(t, "plain", titleFromPath("plain"))
}
