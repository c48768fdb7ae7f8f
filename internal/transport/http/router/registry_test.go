package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type recMod struct {
	name string
	prio int
	log  *[]string
}

func (m recMod) MountAPI(_, _ *gin.RouterGroup) { *m.log = append(*m.log, m.name) }
func (m recMod) Priority() int                  { return m.prio }

type plainMod struct{ log *[]string }

func (m plainMod) MountAPI(_, _ *gin.RouterGroup) { *m.log = append(*m.log, "plain") }

func TestRegistry_MountOrder(t *testing.T) {
	var log []string
	var reg Registry
	reg.Register(
		plainMod{log: &log},
		recMod{name: "late", prio: 200, log: &log},
		recMod{name: "first", prio: 1, log: &log},
		recMod{name: "tie-a", prio: 50, log: &log},
		recMod{name: "tie-b", prio: 50, log: &log},
	)

	r := gin.New()
	reg.MountAll(r.Group(""), r.Group(""))
	assert.Equal(t, []string{"first", "tie-a", "tie-b", "plain", "late"}, log)
}
