/*
Package utils contains decorators shared by every application route:
panic recovery, request logging, savepoints and action tagging.
*/
package utils
