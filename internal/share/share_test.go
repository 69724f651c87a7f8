package share

import (
	"testing"

	zrok "github.com/openziti/zrok/sdk/golang/sdk"
	"github.com/stretchr/testify/assert"
)

func TestShareRequest(t *testing.T) {
	req := shareRequest("http://localhost:8080")

	assert.Equal(t, zrok.ProxyBackendMode, req.BackendMode)
	assert.Equal(t, zrok.PublicShareMode, req.ShareMode)
	assert.Equal(t, []string{"public"}, req.Frontends)
	assert.Equal(t, "http://localhost:8080", req.Target)
}

func TestReservedEndpoint(t *testing.T) {
	assert.Equal(t, "https://rpgdelta.share.zrok.io", reservedEndpoint("rpgdelta"))
}
