// Package message routes discrete named events into processors that are
// driven by messages rather than continuous sample streams.
package message

import (
	"github.com/ErkEntonio/avendish/pkg/framework/field"
	"github.com/ErkEntonio/avendish/pkg/framework/hostval"
)

// Bang is the reserved event name that triggers the processing operation
// with no payload.
const Bang = "bang"

// Handler is an author-declared handler for one event name. It runs instead
// of the default routing; no default behavior follows it.
type Handler func(args []hostval.Value)

// Router matches incoming events against author-declared handlers and falls
// back to the generic first-inlet routing. One router serves one processor
// instance; its invoke and commit closures are bound at instance creation.
type Router struct {
	handlers map[string]Handler
	ins      *field.Frame

	invoke func()
	commit func()
	notify func(name string)
}

// NewRouter builds a router over the instance's input frame. invoke runs the
// bound processing operation and may be nil for records without one; commit
// drains the output fields to the host ports; notify receives bare non-bang
// events and may be nil.
func NewRouter(ins *field.Frame, invoke, commit func(), notify func(name string)) *Router {
	return &Router{
		handlers: make(map[string]Handler),
		ins:      ins,
		invoke:   invoke,
		commit:   commit,
		notify:   notify,
	}
}

// Handle declares an explicit handler for an event name. A handler
// registered under one name never matches another; "bang" only reaches a
// handler registered as "bang".
func (r *Router) Handle(name string, h Handler) {
	r.handlers[name] = h
}

// Dispatch routes one event.
//
// Matched-message mode: if the name has an explicit handler, it runs with
// the argument list and routing stops.
//
// Default mode: a zero-argument "bang" invokes the processing operation and
// commits outputs; any other zero-argument event is a bare notification.
// With arguments, argument 0 is routed into the first input field (numeric
// payload to a numeric first field, string payload to a string first field,
// any other first-field shape is left untouched), then the operation runs
// and outputs are committed. Arguments past the first are dropped here;
// other inlets are the host's own port-routing job.
func (r *Router) Dispatch(name string, args []hostval.Value) {
	if h, ok := r.handlers[name]; ok {
		h(args)
		return
	}

	if len(args) == 0 {
		if name == Bang {
			r.run()
			return
		}
		if r.notify != nil {
			r.notify(name)
		}
		return
	}

	r.routeFirstInlet(args[0])
	r.run()
}

func (r *Router) run() {
	if r.invoke != nil {
		r.invoke()
	}
	if r.commit != nil {
		r.commit()
	}
}

func (r *Router) routeFirstInlet(v hostval.Value) {
	if r.ins.Count() == 0 {
		return
	}
	first := r.ins.Schema().At(0)
	dst := r.ins.Value(0)
	switch {
	case v.IsNumeric() && first.Shape.IsNumeric():
		hostval.Assign(first, v, dst)
	case v.Kind == hostval.KindString && first.Shape == field.ShapeString:
		hostval.Assign(first, v, dst)
	default:
		// First field cannot take this payload; drop it.
	}
}
