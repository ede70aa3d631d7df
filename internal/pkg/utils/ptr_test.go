package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	p := Ptr("fbk")
	assert.Equal(t, "fbk", *p)

	v := 10
	q := Ptr(v)
	*q = 20
	assert.Equal(t, 10, v, "Ptr must copy its argument")
}
