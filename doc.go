// Package canopy is a floating-panel interaction core for [Ebitengine] UIs.
//
// Canopy manages the part of tooltips, dropdowns, and nested menus that is
// genuinely hard: keeping a hierarchy of floating panels consistent (a click
// in a sub-submenu must never close its ancestors, while a click on a sibling
// branch closes everything on the other branch), and telling an intentional
// pointer journey from a trigger to its panel apart from a real leave (the
// "safe polygon" corridor). Positioning is left to a placement engine; canopy
// only consumes the resolved side and the element rectangles.
//
// # Floating tree
//
// Each floating hierarchy is a [FloatingTree]. Panels register with
// [FloatingTree.AddPanel], nesting via ParentID; closing a panel cascades to
// every open descendant with [ReasonAncestorClose]:
//
//	tree := canopy.NewFloatingTree()
//	menu := tree.AddPanel(menuButton, menuPanel, canopy.PanelOptions{})
//	sub := tree.AddPanel(subItem, subPanel, canopy.PanelOptions{ParentID: menu.ID()})
//
// [FloatingTree.DeepestOpenNode] and [FloatingTree.CloseDeepest] implement
// layered dismissal (one Escape press closes one layer), and
// [FloatingTree.Apply] iterates relationship-scoped slices of the hierarchy
// (ancestors, descendants, siblings, whole branches, or their complements).
//
// # Interaction behaviors
//
// [HoverBehavior], [ClickBehavior], [FocusBehavior], and [DismissManager]
// turn raw pointer and focus activity into open/close decisions, classifying
// every event target against the hierarchy first so that descendants are
// never closed by their ancestors' triggers. Behaviors attach to a
// [PointerManager], which polls ebiten once per frame (or replays injected
// events in tests):
//
//	pm := canopy.NewPointerManager(canopy.EbitenSource{})
//	pm.Attach(canopy.NewHover(tree, menu.ID(), canopy.HoverOptions{
//		SafePolygon: true, Side: canopy.SideBottom,
//	}))
//	pm.SetDismiss(canopy.NewDismiss(tree))
//	// in your ebiten Update: pm.Update(1.0 / float64(ebiten.TPS()))
//
// # Safe polygon
//
// [NewSession] starts a hover-intent evaluation when the pointer leaves an
// anchor: samples inside the computed corridor (or the rectangular trough
// between the elements) keep the panel open, samples outside confirm the
// close, optionally gated by cursor speed so a fast flick across the gap gets
// a grace delay instead of an instant close.
//
// Canopy never panics over a structurally invalid request; tree misuse
// degrades to a no-op with a diagnostic, since it runs inside the host's
// event callbacks.
//
// [Ebitengine]: https://ebitengine.org
package canopy
