/*
Package app contains standard implementations of a number of components.

It is a good place to look for sample code, but you can use your own
implementations if they fit better. The StoreApp runs every transaction
against a cache of the commit store, so a transaction either takes effect
entirely or not at all.
*/
package app
