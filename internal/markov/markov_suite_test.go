package markov_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMarkov(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Markov Suite")
}
