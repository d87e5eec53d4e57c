/*
Package grafttest provides scaffolding for testing code built on graft.

Suite is an embeddable testify suite that manages a fresh viper
environment per test and spins up fx apps wired the way graftfx expects.
Recorder mints interceptors that journal their own lifecycle, so tests
can assert initialization, wrapping, and invocation order.
*/
package grafttest
