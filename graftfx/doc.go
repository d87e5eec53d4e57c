/*
Package graftfx integrates graft composition units with go.uber.org/fx.
Units become named application components, and a unit that fails to load
fails the enclosing application at construction time.
*/
package graftfx
