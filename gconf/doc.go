/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension keeps its configuration as a single serialized object stored
under the "_c:<package name>" key. Configuration can be loaded from the
genesis file, using InitConfig, or written by a message handler using Save.
*/
package gconf
