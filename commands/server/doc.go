/*
Package server contains the node side commands: writing the application
state into a tendermint genesis file, running the ABCI server and a few
tools to inspect and replay stored blocks.
*/
package server
