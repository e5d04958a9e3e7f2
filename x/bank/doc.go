/*
Package bank keeps the coin balances of all accounts.

Every account holds a single wallet with any number of denominations.
Other extensions move funds through the CoinMover interface, so that the
wallet bucket is owned by this package only.
*/
package bank
