package building

import (
	"fmt"
	"weak"

	"github.com/vango-dev/signalgraph/internal/errors"
	"github.com/vango-dev/signalgraph/pkg/reactive"
	"github.com/vango-dev/signalgraph/pkg/relation"
)

// ErrRootReleased matches failures of entities whose Root was collected.
var ErrRootReleased = errors.New("G003")

// Root owns the per-kind indexes of one graph.
type Root struct {
	houses  *relation.Index[*House]
	rooms   *relation.Index[*Room]
	windows *relation.Index[*Window]
}

// NewRoot creates an empty graph.
func NewRoot() *Root {
	return &Root{
		houses:  relation.NewIndex("house", (*House).ID),
		rooms:   relation.NewIndex("room", (*Room).ID),
		windows: relation.NewIndex("window", (*Window).ID),
	}
}

// Houses returns the house index.
func (r *Root) Houses() *relation.Index[*House] { return r.houses }

// Rooms returns the room index.
func (r *Root) Rooms() *relation.Index[*Room] { return r.rooms }

// Windows returns the window index.
func (r *Root) Windows() *relation.Index[*Window] { return r.windows }

// House looks up a house by id without subscribing.
func (r *Root) House(id int) (*House, bool) { return r.houses.Find(id) }

// Room looks up a room by id without subscribing.
func (r *Root) Room(id int) (*Room, bool) { return r.rooms.Find(id) }

// Window looks up a window by id without subscribing.
func (r *Root) Window(id int) (*Window, bool) { return r.windows.Find(id) }

// node is the part shared by every entity.
type node struct {
	kind string
	id   int
	root weak.Pointer[Root]
}

func newNode(root *Root, kind string, id int) node {
	return node{kind: kind, id: id, root: weak.Make(root)}
}

// ID returns the entity id.
func (n *node) ID() int {
	return n.id
}

func (n *node) resolve() (*Root, error) {
	if root := n.root.Value(); root != nil {
		return root, nil
	}
	return nil, errors.New("G003").WithDetail(fmt.Sprintf("%s %d", n.kind, n.id))
}

// derive memoizes a field that needs the root to build.
func derive[T any](n *node, f *reactive.Field[T], build func(*Root) reactive.Signal[T]) reactive.Signal[T] {
	return f.Get(func() reactive.Signal[T] {
		root, err := n.resolve()
		if err != nil {
			return reactive.Fail[T](err)
		}
		return build(root)
	})
}
