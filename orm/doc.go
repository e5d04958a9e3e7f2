/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
  * Each bucket contains only one type of object.
  * Objects are stored under a primary key, prefixed with the bucket name.
  * Sequences provide monotonic counters, stored next to the bucket data.
  * Buckets can be registered on the query router to expose their content.
*/
package orm
