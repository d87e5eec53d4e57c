/*
Package graftconfig declares composition units in external configuration.
It unmarshals unit descriptions from viper, resolves seed and interceptor
names through a Registry, and builds the corresponding graft units.
*/
package graftconfig
