/*
The package gsm builds synthetic SMS-DELIVER TPDUs, as if the message had been received over the air,
so that they can be written into the message storage of a SIM card. This implementation is based on:
  [TS23040] 3GPP TS 23.040 V16.0.0 (2020-07)
  [TS23038] 3GPP TS 23.038 V16.0.0 (2020-07)

The most relevant chapters in [TS23040] are 9.2.2.1 (SMS-DELIVER) and 9.2.3 (the TP fields).

Abbreviations:
TPDU: Transfer Protocol Data Unit
UDH: User Data Header
TOA: Type Of Address
DCS: Data Coding Scheme
SCTS: Service Centre Time Stamp

Restrictions:
Only the default alphabet and its extension table are supported, national language shift tables are not.
Concatenated messages are not split, a message must fit into a single TPDU.
*/
package gsm
