/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets. Each bucket
contains only one type of Model, stored under its primary key. Models
serialize themselves, so a bucket never needs to know their layout.
*/
package orm
