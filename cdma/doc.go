/*
The package cdma builds synthetic delivery PDUs for CDMA subscriptions, in the layout that is used to store
a message on a R-UIM card. This implementation is based on:
  [C.S0015] 3GPP2 C.S0015-B v2.0 (2004-09)
  [C.S0005] 3GPP2 C.S0005-D v2.0 (2004-10)

Layout of the PDU:
  [teleservice id(4)][service present(4)][service category(4)]
  [digit mode][number mode][number type][number plan][digit count][digits...]
  [subaddress type][subaddress odd][subaddress digit count]
  [bearer data length][bearer data...]

Restrictions:
Subaddresses are not supported. The user data is always encoded as UNICODE_16.
*/
package cdma
