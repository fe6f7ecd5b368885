package idgen

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Generate returns a new unique id in snowflake string form.
func Generate() string {
	once.Do(func() {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic("snowflake node init: " + err.Error())
		}
	})
	return node.Generate().String()
}
