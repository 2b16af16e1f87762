// Package signature parses the type descriptors that identify remote methods.
//
// Remote methods are resolved by name plus an exact descriptor string:
//
//	(Ljava/lang/String;Z)Z     boolean delete(String path, boolean recursive)
//	([BII)I                    int read(byte[] b, int off, int len)
//	()Ltachyon/client/InStream;
//
// Type codes:
//
//	Z boolean  B byte  C char  S short  I int  J long  F float  D double
//	V void (return only)  Lclass/name;  [elem
//
// Parse and ParseType validate the descriptor and return structured types;
// String on either result re-encodes the exact input.
package signature
