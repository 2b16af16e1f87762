package tachyon

import "github.com/wippyai/tachyon-bridge/bridge"

const (
	classFS           = "tachyon/client/TachyonFS"
	classFile         = "tachyon/client/TachyonFile"
	classBlockBuffer  = "tachyon/client/TachyonByteBuffer"
	classByteBuffer   = "java/nio/ByteBuffer"
	classInStream     = "tachyon/client/InStream"
	classOutStream    = "tachyon/client/OutStream"
	classURI          = "tachyon/TachyonURI"
	classKV           = "tachyon/client/TachyonKV"
	classReadType     = "tachyon/client/ReadType"
	classWriteType    = "tachyon/client/WriteType"
	fieldBlockData    = "mData"
	fieldBlockDataSig = "Ljava/nio/ByteBuffer;"
)

// TachyonFS
var (
	fsGet         = bridge.MustStatic(classFS, "get", "(Ljava/lang/String;)Ltachyon/client/TachyonFS;")
	fsGetFile     = bridge.MustVirtual(classFS, "getFile", "(Ljava/lang/String;)Ltachyon/client/TachyonFile;")
	fsGetFileByID = bridge.MustVirtual(classFS, "getFile", "(I)Ltachyon/client/TachyonFile;")
	fsGetFileUC   = bridge.MustVirtual(classFS, "getFile", "(IZ)Ltachyon/client/TachyonFile;")
	fsGetFileID   = bridge.MustVirtual(classFS, "getFileId", "(Ljava/lang/String;)I")
	fsCreateFile  = bridge.MustVirtual(classFS, "createFile", "(Ljava/lang/String;)I")
	fsMkdir       = bridge.MustVirtual(classFS, "mkdir", "(Ljava/lang/String;)Z")
	fsMkdirs      = bridge.MustVirtual(classFS, "mkdirs", "(Ljava/lang/String;Z)Z")
	fsDeletePath  = bridge.MustVirtual(classFS, "delete", "(Ljava/lang/String;Z)Z")
	fsDeleteID    = bridge.MustVirtual(classFS, "delete", "(IZ)Z")
)

// TachyonFile
var (
	fileLength         = bridge.MustVirtual(classFile, "length", "()J")
	filePath           = bridge.MustVirtual(classFile, "getPath", "()Ljava/lang/String;")
	fileIsFile         = bridge.MustVirtual(classFile, "isFile", "()Z")
	fileIsDirectory    = bridge.MustVirtual(classFile, "isDirectory", "()Z")
	fileIsInMemory     = bridge.MustVirtual(classFile, "isInMemory", "()Z")
	fileIsComplete     = bridge.MustVirtual(classFile, "isComplete", "()Z")
	fileNeedPin        = bridge.MustVirtual(classFile, "needPin", "()Z")
	fileRecache        = bridge.MustVirtual(classFile, "recache", "()Z")
	fileReadByteBuffer = bridge.MustVirtual(classFile, "readByteBuffer", "(I)Ltachyon/client/TachyonByteBuffer;")
	fileInStream       = bridge.MustVirtual(classFile, "getInStream", "(Ltachyon/client/ReadType;)Ltachyon/client/InStream;")
	fileOutStream      = bridge.MustVirtual(classFile, "getOutStream", "(Ltachyon/client/WriteType;)Ltachyon/client/OutStream;")
)

// TachyonByteBuffer and java/nio/ByteBuffer
var (
	blockBufferClose = bridge.MustVirtual(classBlockBuffer, "close", "()V")
	bufferAllocate   = bridge.MustStatic(classByteBuffer, "allocate", "(I)Ljava/nio/ByteBuffer;")
	bufferCapacity   = bridge.MustVirtual(classByteBuffer, "capacity", "()I")
	bufferArray      = bridge.MustVirtual(classByteBuffer, "array", "()[B")
)

// InStream
var (
	inRead      = bridge.MustVirtual(classInStream, "read", "()I")
	inReadRange = bridge.MustVirtual(classInStream, "read", "([BII)I")
	inSeek      = bridge.MustVirtual(classInStream, "seek", "(J)V")
	inSkip      = bridge.MustVirtual(classInStream, "skip", "(J)J")
	inClose     = bridge.MustVirtual(classInStream, "close", "()V")
)

// OutStream
var (
	outWrite      = bridge.MustVirtual(classOutStream, "write", "(I)V")
	outWriteRange = bridge.MustVirtual(classOutStream, "write", "([BII)V")
	outFlush      = bridge.MustVirtual(classOutStream, "flush", "()V")
	outCancel     = bridge.MustVirtual(classOutStream, "cancel", "()V")
	outClose      = bridge.MustVirtual(classOutStream, "close", "()V")
)

// TachyonURI
var (
	uriNew      = bridge.MustConstructor(classURI, "(Ljava/lang/String;)V")
	uriNewParts = bridge.MustConstructor(classURI, "(Ljava/lang/String;Ljava/lang/String;Ljava/lang/String;)V")
	uriNewJoin  = bridge.MustConstructor(classURI, "(Ltachyon/TachyonURI;Ltachyon/TachyonURI;)V")
	uriToString = bridge.MustVirtual(classURI, "toString", "()Ljava/lang/String;")
	uriPath     = bridge.MustVirtual(classURI, "getPath", "()Ljava/lang/String;")
)

// TachyonKV
var (
	kvNew  = bridge.MustConstructor(classKV, "(Ltachyon/client/TachyonFS;Ltachyon/client/ReadType;Ltachyon/client/WriteType;JLjava/lang/String;)V")
	kvInit = bridge.MustVirtual(classKV, "init", "()Z")
	kvGet  = bridge.MustVirtual(classKV, "get", "([B[B)I")
	kvSet  = bridge.MustVirtual(classKV, "set", "([B[B)V")
)
